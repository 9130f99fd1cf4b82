// Package storage opens source files for validation from the local
// filesystem or from Amazon S3 and S3-compatible services.
//
// Both backends implement Storage. LocalStorage confines every path to its
// base directory. S3Storage talks to S3 through the S3Client interface so
// tests can inject a mock, and classifies SDK errors into the sentinel errors
// of this package (ErrFileNotFound, ErrAccessDenied, ...).
//
// Resolve picks the backend from a source uri:
//
//	s, key, err := storage.Resolve(ctx, "s3://exports/people.csv", cfg.S3)
//	if err != nil {
//	    return err
//	}
//	rc, err := s.Open(ctx, key)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
package storage
