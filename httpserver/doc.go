/*
Package httpserver implements the HTTP host of the inventor registry.

The server exposes the registry operations under /api (see package api for the
routes and wire types), plus the usual operational endpoints:

  - /livez, /readyz: liveness and readiness probes
  - /drain, /undrain: toggle readiness ahead of a shutdown
  - /debug: pprof, when enabled

Every registry call is serialized through a single mutex in Handler. After each
successful mutation the handler invokes its PersistFunc, normally a snapshot
save, and answers 500 if that fails. Registry rejections are never logged as
errors: they are answered with an err result and counted in the metrics.

Prometheus metrics are served on a separate listener (MetricsAddr).
*/
package httpserver
