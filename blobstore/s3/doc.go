// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("label-models/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	models := artifact.NewStore(store)
//
// # Concurrent Writers
//
// S3 has no compare-and-swap, so two writers saving the same model can race on
// its CURRENT pointer. Wrap the store in a DDBCommitStore to route CURRENT
// pointers through DynamoDB conditional writes.
package s3
