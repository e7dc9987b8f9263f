// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

// Package client wires the sync runtime together.
//
// It composes the durable store, the connectivity monitor and the sync
// manager into a single process lifecycle. All dependencies are injected
// through NewApp; nothing in this package holds global state.
package client
