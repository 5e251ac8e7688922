// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing messages shared by the startup flow
// and the terminal desk.
//
// Msg* constants are complete status lines. Prefix* constants are followed
// by an error text. Title* constants head the startup prompts.
package app

const (
	// TitleStorageUnavailable heads the prompt offering an in-memory store.
	TitleStorageUnavailable = "Notes storage is unavailable"

	// TitleCorruptStore heads the prompt offering to move a corrupt file aside.
	TitleCorruptStore = "Notes file is corrupt"

	// MsgMemoryOnly is shown on start when the user chose the in-memory store.
	MsgMemoryOnly = "Running in memory: notes will not be saved"

	// PrefixCorruptMoved is followed by the path of the backup file.
	PrefixCorruptMoved = "Unreadable notes were moved to "

	// MsgExternalChange is shown when another program rewrote the notes file.
	MsgExternalChange = "Notes file changed on disk, ctrl+r to reload"

	// MsgExternalRemoval is shown when the notes file disappeared.
	MsgExternalRemoval = "Notes file was removed, your notes will be written again on the next save"

	MsgCopied       = "Copied to clipboard"
	MsgNoteDeleted  = "Note deleted"
	MsgReloaded     = "Notes reloaded"
	MsgNoteNotFound = "Note no longer exists"

	PrefixClipboardUnavailable = "Clipboard unavailable: "
	PrefixPreviewUnavailable   = "Preview unavailable: "

	// PrefixSaveFailed is used when a save failed and edits only live in
	// memory.
	PrefixSaveFailed = "Changes kept in memory: "

	PrefixCorrupt     = "Notes are unreadable: "
	PrefixUnavailable = "Storage unavailable: "
)
