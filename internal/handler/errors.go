// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned when the configuration names no
// listening address, so no transport handler can be initialized. This is a
// fatal misconfiguration and fails the startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
