// Package domain contains the core entities of the Speako practice
// platform and their validation rules. Entities are plain structs with
// constructor functions that assign identifiers and timestamps; stores
// and services operate on them without reaching back into this package
// for anything but validation.
package domain
