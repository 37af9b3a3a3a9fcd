// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookuc

import (
	"errors"
	"time"
)

// Option is a functional option for the bookings use case.
type Option func(uc *UseCase) error

// WithClock option configures a bookings UseCase instance to take
// the check-in and check-out instants from the given clock function
// instead of the system wall clock. This option may be passed to the
// New() function. The returned instants are normalized to UTC before
// being stored or used in any computation.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock function is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
