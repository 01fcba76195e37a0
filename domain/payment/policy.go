package payment

// Policy decides what the order workflow does when verification cannot reach
// the gateway at all (as opposed to the gateway answering "invalid", which
// always rejects the order).
//
// PolicyStrict is the production setting: an unreachable gateway fails the
// checkout, because creating an order for an unverified charge is worse than
// rejecting a charge that may have succeeded.
//
// PolicyPermissive exists for environments without real gateway credentials:
// the checkout proceeds with a logged warning. It must never be enabled in
// production.
//
// The policy is injected into the workflow at startup rather than read from
// ambient environment state inside the verification path.
type Policy string

const (
	PolicyStrict     Policy = "strict"
	PolicyPermissive Policy = "permissive"
)

// ParsePolicy maps a config string to a Policy, defaulting to strict on
// anything unrecognized so that a typo can only make the system safer.
func ParsePolicy(s string) Policy {
	if s == string(PolicyPermissive) {
		return PolicyPermissive
	}
	return PolicyStrict
}
