// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns the in-memory chat list and the active conversation.
//
// The Manager coordinates message append, title generation, and
// persistence-on-change around the provider adapter's blocking call: the
// user message is appended and persisted before the network call goes out,
// so a crash mid-flight never loses it, and the assistant reply (or an
// inline error message) lands afterwards. At most one send is outstanding
// at a time; the responding flag tells the presentation layer to disable
// the send affordance.
//
// A reply is applied to the chat it was sent from, looked up by the ID
// captured at send time. Switching chats mid-flight therefore files the
// reply into the originating chat's history; deleting that chat discards
// the reply.
package chat
