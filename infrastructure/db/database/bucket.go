package database

import "bytes"

var separator = []byte("/")

// Bucket is a helper type meant to combine buckets and sub-buckets that can
// be used to create database keys.
type Bucket struct {
	path [][]byte
}

// MakeBucket creates a new Bucket using the given path of buckets.
func MakeBucket(path ...[]byte) *Bucket {
	return &Bucket{path: path}
}

// Bucket returns the sub-bucket of the current bucket defined by bucketBytes.
func (b *Bucket) Bucket(bucketBytes []byte) *Bucket {
	newPath := make([][]byte, len(b.path)+1)
	copy(newPath, b.path)
	newPath[len(b.path)] = bucketBytes

	return MakeBucket(newPath...)
}

// Key returns a key in the current bucket with the given suffix.
func (b *Bucket) Key(suffix []byte) *Key {
	return &Key{bucket: b, suffix: suffix}
}

// Path returns the full path of the current bucket.
func (b *Bucket) Path() []byte {
	bucketPath := bytes.Join(b.path, separator)

	bucketPathWithFinalSeparator := make([]byte, len(bucketPath)+len(separator))
	copy(bucketPathWithFinalSeparator, bucketPath)
	copy(bucketPathWithFinalSeparator[len(bucketPath):], separator)

	return bucketPathWithFinalSeparator
}

// Key is a helper type meant to combine a bucket and a key suffix into a
// single full database key.
type Key struct {
	bucket *Bucket
	suffix []byte
}

// Bytes returns the full key as a byte slice.
func (k *Key) Bytes() []byte {
	bucketPath := k.bucket.Path()

	fullKey := make([]byte, len(bucketPath)+len(k.suffix))
	copy(fullKey, bucketPath)
	copy(fullKey[len(bucketPath):], k.suffix)
	return fullKey
}

func (k *Key) String() string {
	return string(k.Bytes())
}

// Bucket returns the bucket part of the key.
func (k *Key) Bucket() *Bucket {
	return k.bucket
}

// Suffix returns the key suffix part of the key.
func (k *Key) Suffix() []byte {
	return k.suffix
}
