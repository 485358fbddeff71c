// Package modelstore caches deployment bundles so repeated runs do not
// rebuild and redownload the same model from the Studio.
//
// A Store holds immutable, named zip archives. LocalStore keeps them on the
// local file system; the minio subpackage keeps them in MinIO/S3-compatible
// object storage for sharing across machines.
package modelstore
