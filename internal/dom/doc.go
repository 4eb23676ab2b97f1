// Package dom provides attribute and inline-style helpers over parsed
// HTML trees. Attribute names are matched in their canonical lowercase
// form, which is what the HTML parser produces regardless of the casing
// used in the theme sources.
package dom
