// Package recipe defines the canonical extracted recipe shapes and the
// assembler that flattens them into the persisted row format.
//
// Structured is what extraction produces: ordered ingredient and step lists,
// utensils, and timing strings. Normalized is the display/persistence form
// with the lists flattened into single strings. Assemble is a pure, total
// function; it never fails and produces byte-identical output for identical
// input.
package recipe
