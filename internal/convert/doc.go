// Package convert provides the batch orchestration that runs the ID3
// conversion over many files.
//
// # Manager
//
// The Manager coordinates the entire conversion process:
//
//  1. Expand input files and directories
//  2. Convert each file with a recode.Driver
//  3. Report every outcome through a progress callback
//  4. Aggregate results into a model.Summary
//
// # Basic Usage
//
//	manager := convert.NewManager(settings, func(event convert.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Initialize(ctx, []string{"/music/old", "/music/song.mp3"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manager.Start(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(manager.Summary())
//
// # Concurrency
//
// Files are converted one at a time unless settings.MaxConcurrentFiles is
// raised. Each file is owned by exactly one worker; the same path is never
// queued twice.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	    Path    string
//	}
//
// The callback may be invoked from several goroutines at once.
package convert
