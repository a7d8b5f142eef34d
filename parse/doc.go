// Package parse maps Visual Genome JSON payloads onto model records.
//
// Every function is a pure mapping over a gjson document; none perform I/O.
// Payloads come in two conventions that are detected explicitly:
//
//   - objects label themselves with a "names" array or a single "name"
//     (DetectObjectShape)
//   - region batches carry ids under "region_id" or "id", decided once per
//     batch from its first element (DetectRegionIDKey)
//
// Failures are reported with the sentinels in the errors package:
// ErrMissingField, ErrFieldType, ErrDanglingReference and ErrShapeAmbiguity.
// No partially built record is ever returned.
package parse
