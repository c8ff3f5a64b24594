// Package health provides liveness and readiness probes for the sweeper daemon.
//
// Liveness (/health) only reports that the process is up. Readiness (/ready)
// pings the compliance store and answers 503 while it is unreachable:
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("store", health.PingCheck(store))
//	checker.Register(mux, "/health", "/ready")
//
// Checks run concurrently, each bounded by the checker timeout.
package health
