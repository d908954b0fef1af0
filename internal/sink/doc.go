// Package sink stores conversion artifacts in a blob bucket.
//
// Buckets are addressed by gocloud.dev URLs:
//
//	file:///var/artifacts
//	s3://my-bucket?region=eu-west-1
//	gs://my-bucket
//	mem://
//
// Artifacts are streamed straight from the conversion service into the
// bucket without touching local disk.
package sink
