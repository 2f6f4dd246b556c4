/*
Package hobby finds Bézier control points for a closed ring of knots using
John Hobby's spline interpolation algorithm, as known from MetaFont and
MetaPost.

The shape generator offers it as an alternative to its default
tangent-based handle derivation. Hobby's curves are rounder and follow the
knots more gracefully, at the price of a global (cyclic, tridiagonal)
equation system instead of a purely local rule.

The primary source of information for "Hobby-splines" is:

	Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
	Computer Science Dept. Stanford University
	Report No. STAN-CS-85-1047, Jan 1985

The practical algorithm is explained in Computers & Typesetting, Vol. B & D.
The notation sticks closely to the original code in MetaFont.

Only cyclic paths with uniform tension are supported: no explicit
directions, no curls, no straight joins. A ring of knots z.0 … z.n-1 gets
a post-control z.i+ and a pre-control z.i- for every knot:

	z.0 .. controls z.0+ and z.1- .. z.1 .. … .. z.n-1 .. controls z.n-1+ and z.0- .. cycle

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package hobby

import (
	"fmt"
	"strings"

	"github.com/npillmayer/blobgen"
)

// AsString returns a ring of knots -- optionally including spline control
// points -- as a (debugging) string, in a format close to MetaPost's.
//
//	(1,1) .. controls (1.0000,1.5523) and (1.4477,2.0000)
//	  .. (2,2) .. controls (2.5523,2.0000) and (3.0000,1.5523)
//	  .. (3,1) .. controls (3.0000,0.4477) and (2.5523,0.0000)
//	  .. (2,0) .. controls (1.4477,0.0000) and (1.0000,0.4477)
//	  .. cycle
func AsString(knots []blobgen.Pair, contr *Controls) string {
	var b strings.Builder
	for i, z := range knots {
		if i > 0 {
			if contr != nil {
				fmt.Fprintf(&b, " and %s\n  .. ", ptstring(contr.Pre(i), true))
			} else {
				b.WriteString(" .. ")
			}
		}
		b.WriteString(ptstring(z, false))
		if contr != nil {
			fmt.Fprintf(&b, " .. controls %s", ptstring(contr.Post(i), true))
		}
	}
	if contr != nil && len(knots) > 0 {
		fmt.Fprintf(&b, " and %s\n ", ptstring(contr.Pre(0), true))
	}
	b.WriteString(" .. cycle")
	return b.String()
}
