// Package report defines the JSON wire format for placement requests and
// decisions.
//
// The same types back `tooltip place --format json` and the HTTP API, so a
// document written by one can be fed to anything that reads the other.
//
// # Core Types
//
//   - [Request]: geometry and options for one placement computation
//   - [Document]: the resolved placement, coordinates and tooltip box
//   - [Survey]: every placement evaluated for one geometry
//
// Use [Request.Compute] to run the placement core and [Marshal] or [Write]
// to serialize the result.
package report
