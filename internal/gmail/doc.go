// Package gmail provides a client for the two Gmail surfaces the pipeline
// touches: reading newsletter emails under the newsletters label and sending
// the daily digest as a multipart/alternative message.
//
// The client is built from an explicit credentials object loaded once per
// run; it holds no package-level token state.
package gmail
