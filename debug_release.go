//go:build !mlkemdebug

package mlkem

// Release builds compile the bound checks away entirely.

func polyBoundCheck(p *poly, bound int16, msg string)  {}
func polyUBoundCheck(p *poly, bound int16, msg string) {}
