// Package minio provides a modelstore.Store backed by MinIO or any
// S3-compatible object storage, so deployment bundles downloaded once can
// be shared across machines.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//		Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store := miniostore.NewStore(client, "models", "bundles/")
package minio
