// Package metrics records Prometheus instrumentation for a single build run.
//
// Each run owns a private registry, so repeated runs in one process (tests,
// for example) never collide on metric names. All metrics are prefixed with
// "cr4te_".
//
//   - FilesClassified: counter of grouped media files by media type
//   - CreatorsBuilt: counter of creator records assembled
//   - ProjectsBuilt: counter of project records assembled
//   - Warnings: counter of recoverable warnings by event_type
//   - BuildDuration: gauge of the last build duration in seconds
//   - LastBuildTimestamp: gauge of the last completed build time
//
// With --metrics-file the registry is written in the node_exporter textfile
// collector format:
//
//	cr4te build-json --metrics-file /var/lib/node_exporter/cr4te.prom
package metrics
