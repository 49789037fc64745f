// Package model defines the data structures shared between the conversion
// engine and its front ends.
//
// # Outcome
//
// Every processed file ends in exactly one Outcome:
//
//	OutcomeConverted // tag rewritten with corrected text
//	OutcomeSkipped   // no tag, or the file could not be loaded
//	OutcomeFailed    // every save attempt failed
//
// # FileResult
//
// FileResult carries the outcome of one file together with field statistics
// and the save attempts that were made:
//
//	res := driver.ConvertFile(ctx, "/music/song.mp3")
//	fmt.Println(res) // '/music/song.mp3' is converted
//
// # Summary
//
// Summary aggregates the results of a batch:
//
//	var sum model.Summary
//	for _, r := range results {
//	    sum.Add(r)
//	}
//	fmt.Println(sum.Converted, sum.Failed)
package model
