// Package artifact mirrors result files to object storage.
//
// Store is the minimal key/value contract; InMemoryStore serves tests and
// single-process runs while package artifact/s3 targets AWS S3 and
// S3-compatible services. PublishDir uploads a finished result directory so
// judgments and answers survive the machine that produced them.
package artifact
