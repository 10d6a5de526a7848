// Package marc implements a reader and writer for bibliographic records in
// the MARC family: MARC21 and UNIMARC binary (ISO 2709) and MARCXML. It
// converts losslessly between the wire formats and an in-memory Record, and
// performs the character-encoding conversions the legacy MARC-8 and
// ISO-8859/ISO-5426 byte encodings require. MARC-8 payloads are converted
// as ISO-8859-1, so text using MARC-8's escape-selected graphical sets
// (Greek, Cyrillic, Hebrew, East Asian, ...) does not survive conversion.
//
// The package does not interpret bibliographic semantics: it does not know
// which tags or indicator values are meaningful, does not perform authority
// control or deduplication, and materializes records whole rather than
// streaming unbounded input in fixed memory.
package marc
