// Package storage reads objects from S3-compatible storage (AWS S3, MinIO,
// Cloudflare R2) with static credentials. It backs the s3:// works source.
//
//	store, err := storage.New(storage.Config{
//	    Bucket:    "site-assets",
//	    AccessKey: key,
//	    SecretKey: secret,
//	    Endpoint:  "https://minio.internal:9000",
//	    PathStyle: true,
//	})
//	data, err := store.Get(ctx, "works.json")
//
// SDK errors are normalized onto ErrNotFound, ErrAccessDenied and
// ErrReadFailed.
package storage
