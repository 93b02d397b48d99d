/*
Package file implements the "file" template module.

A Module is configured once with a document store, a host and a depth
guard. Every expansion asks it to Generate a fresh function table bound to
the document being expanded:

	content              raw text of the document
	creation_date [fmt]  creation time, default "YYYY-MM-DD HH:mm"
	last_modified_date   modification time, same formatting
	folder [relative]    parent folder name, or its path
	path [relative]      absolute on-disk path, or the vault-relative path
	rename new_title     move the document within its folder
	selection            text selected in the active view
	tags                 tags declared by the document
	title                name without extension
	cursor               cursor placeholder (literal)
	include name         expand another document in place

include resolves its argument through the store, asks the guard for
admission, reads the target's raw text and calls the parser on it with the
target as the current document and the caller's context mode. Every
admitted inclusion is released on every exit path.
*/
package file
