// Package core holds the value types shared by the highlight builder, the
// terminal backend and the UI: colors, styles, cells and screen rectangles.
package core
