// Package vecdb provides a small embedded vector store for Go.
//
// The store holds a growing collection of (embedding, metadata) pairs and
// answers exact nearest-neighbor queries by cosine similarity with a linear
// scan. It targets single-process, single-writer workloads of moderate size
// where the whole collection fits in memory and an index is not worth its
// complexity.
//
// # Quick Start
//
//	ctx := context.Background()
//	db := vecdb.New()
//
//	id, err := db.Add(ctx, []float32{1, 0}, "hello", "docs.csv", "1")
//	if err != nil {
//	    panic(err)
//	}
//
//	results, err := db.Query(ctx, []float32{0.9, 0.1}, 5)
//	if err != nil {
//	    panic(err)
//	}
//	for _, r := range results {
//	    fmt.Println(r.Record.Text, r.Similarity)
//	}
//
//	_ = id
//
// Records are addressed by the identifier returned from Add, or by their
// current position:
//
//	emb, rec, err := db.Get(vecdb.ByID(id))
//	emb, rec, err = db.Get(vecdb.ByIndex(0))
//
// Positions shift when earlier records are deleted; the identifier is the
// only handle that stays valid across mutations.
//
// # Persistence
//
// Save writes the collection as two blobs (embeddings matrix + metadata
// records) to a directory, and Load restores it:
//
//	if err := db.Save(ctx, "./data"); err != nil { ... }
//	if err := db.Load(ctx, "./data"); err != nil { ... }
//
// SaveTo/LoadFrom accept any blobstore.Store, including the MinIO and S3
// backends in blobstore/minio and blobstore/s3.
//
// # Concurrency
//
// A Store serializes access internally: mutations take a write lock, reads
// a read lock. It is not designed for multi-writer throughput.
package vecdb
