// Package manifest builds the list of script names served to the front end.
//
// A manifest is the sorted list of base names of the script files found in a
// single directory, minus an exclusion set, written as a JSON array of
// strings. It is rebuilt from scratch on every run and never patched.
package manifest
