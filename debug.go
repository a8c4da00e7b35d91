//go:build mlkemdebug

package mlkem

import "fmt"

// Contract checks for coefficient bounds, enabled with the mlkemdebug
// build tag. These catch precondition violations during development and
// are absent from release builds; they are not a production error path.

func polyBoundCheck(p *poly, bound int16, msg string) {
	for i := range p {
		if p[i] <= -bound || p[i] >= bound {
			panic(fmt.Sprintf("mlkem: %s: coefficient %d is %d, outside (-%d, %d)",
				msg, i, p[i], bound, bound))
		}
	}
}

func polyUBoundCheck(p *poly, bound int16, msg string) {
	for i := range p {
		if p[i] < 0 || p[i] >= bound {
			panic(fmt.Sprintf("mlkem: %s: coefficient %d is %d, outside [0, %d)",
				msg, i, p[i], bound))
		}
	}
}
