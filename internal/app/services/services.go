package services

import "time"

// Services defined in this package:
// - StartupService: startup application lifecycle (submit, review, cooldown, withdraw)
// - JobService: jobs and job applications behind the access gate
// - UserService: profiles, admin-only fields and role transitions
// - TrustService: endorsements and trust score aggregation
// - NotificationService: pull-only notices
// - PostService: collaboration posts and joins

// Clock returns the current time. Services keep one so tests can pin it.
type Clock func() time.Time

// systemClock returns UTC now at the precision Postgres stores
func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
