// Package task runs background work on a pool of worker goroutines.
//
// Work submitted with Dispatcher.Submit is fire-and-forget: the caller gets
// no handle, and any error or panic the work produces is captured on a
// dispatcher goroutine and delivered exactly once to the configured
// FaultSink. Nothing the work does can crash or surface in the submitting
// goroutine. Work that the caller wants to observe goes through
// SubmitAwaitable, which returns a Handle carrying the original error.
package task
