// Package pipeline provides a framework for executing analysis steps in
// sequence.
//
// The pipeline pattern is used to take one site's scan data through the
// analysis stages: tokenization, contrast measurement, classification,
// and aggregation. Each stage is implemented as a Step that receives
// the current site report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for large batch runs
//
// The pipeline supports both individual sites and batch processing with
// concurrency control using errgroup.
package pipeline
