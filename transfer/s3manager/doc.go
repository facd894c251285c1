// Package s3manager implements transfer.Manager on the AWS SDK v2 download
// manager.
//
// Objects are fetched with parallel ranged GETs. Parts are written through a
// counting io.WriterAt into a temporary file next to the destination, which
// is renamed into place once every part has arrived. A failed or canceled
// download removes the temporary file and leaves the destination untouched.
//
// Any S3-compatible endpoint works, including MinIO:
//
//	client, err := s3manager.NewClient(ctx, s3manager.Config{
//	    Endpoint:     "localhost:9000",
//	    Region:       "us-east-1",
//	    AccessKey:    "minioadmin",
//	    SecretKey:    "minioadmin",
//	    UsePathStyle: true,
//	})
//	session := s3manager.NewSession(client, s3manager.WithPartSize(16<<20))
package s3manager
