// Package uploadto generates storage paths for uploaded files.
//
// A path is rendered from a template such as "{model_name}/%Y/{filename}.{extension}":
// strftime verbs are expanded against the current time, then placeholders
// are filled from the file name and the model instance the file belongs to.
// File names are slugified and truncated, and files with a blacklisted
// extension are rejected.
package uploadto
