// lgpd-sweeper deletes LGPD compliance log records older than five years.
//
// It queries the compliance log store for records whose timestamp is older
// than now minus five calendar years and removes them in one atomic batch.
//
// Usage:
//
//	# Run as a daemon, sweeping every 24 hours and serving /metrics, /health, /ready
//	lgpd-sweeper run --config /etc/lgpd-sweeper/config.yaml
//
//	# Sweep once (for an external scheduler such as a Kubernetes CronJob)
//	lgpd-sweeper sweep
//
//	# Show how many records a sweep would delete
//	lgpd-sweeper sweep --dry-run --format json
//
//	# Show version information
//	lgpd-sweeper version
package main

func main() {
	Execute()
}
