// Package transfer runs managed bulk downloads from an object store into a
// local file.
//
// A download moves through fixed stages:
//
//  1. StageConstruct: the Session builds a Manager.
//  2. StageInitiate: the Manager starts a download and returns a Transfer
//     without blocking.
//  3. StageWait: the caller blocks until the Transfer finishes.
//  4. StageProgress: the final Progress snapshot is read.
//  5. StageShutdown: the Manager is shut down on every exit path.
//
// Every failure is reported as a *Failure naming the stage that failed:
//
//	n, err := transfer.Run(ctx, session, ref, "/tmp/report.csv")
//	var f *transfer.Failure
//	if errors.As(err, &f) && f.Retryable() {
//	    // try again later
//	}
//
// Providers implement SessionOpener; see fs/minio and transfer/s3manager.
package transfer
