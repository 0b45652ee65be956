// Package mongo provides a blobstore.Store backed by a MongoDB collection.
//
// Each blob is one document of the form {_id: name, data: <binary>}.
// Artifacts are small, far below the 16 MiB document limit.
//
//	db, err := mongo.Connect(ctx, "mongodb://localhost:27017/models")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	models := artifact.NewStore(mongo.NewStore(db.Collection("label_transform")))
package mongo
