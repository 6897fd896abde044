package main

import "golang.org/x/time/rate"

func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(0.001), 1)
}
