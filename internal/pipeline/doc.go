// Package pipeline executes validation steps against a page in sequence.
//
// A page validation runs through multiple stages: navigation, the page
// chrome check, component probes, and link checking. Each stage is a
// Step that receives the live page and the accumulated report.
//
// Design decision: steps run on a pipeline instead of direct calls
// because:
//  1. Each page kind (homepage, data-center, series, PDP) is just a
//     different step list over the same machinery
//  2. Error handling and logging stay consistent across steps
//  3. Long runs stay cancellable via context between steps
//
// The pipeline supports single-page runs and concurrent batch runs with
// a shared browser session.
package pipeline
