// Package backup exports the whole store as a directory of Markdown files
// with YAML front matter and imports such a directory back.
//
// Each note becomes <id>.md, with bytes of the id outside [a-z0-9._-]
// written as %XX:
//
//	---
//	id: 42
//	title: Groceries
//	folder: work
//	folder_name: Work
//	folder_idx: 0
//	tags:
//	  - home
//	pinned: true
//	created_at: 1700000000000
//	updated_at: 1700000005000
//	---
//
//	milk
//	eggs
//
// Import keeps the original updated_at of every note, creating notes that
// are missing and overwriting the ones that exist. The note body is kept
// byte for byte. Missing folders are recreated under their recorded name and
// position; a name already used by another folder gets the id appended.
package backup
