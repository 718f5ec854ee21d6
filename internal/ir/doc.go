// Package ir provides the resolved configuration types for phpunitxml.
//
// This package contains type definitions and their canonical serialization
// only. All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Sections with documented defaults carry the defaulted value directly
//   - Root framework options use nil pointers for absent attributes, callers
//     apply their own defaults
//   - Ordered settings keep first-insertion position, last value wins
//   - All JSON tags use the attribute spelling of the XML document
package ir
