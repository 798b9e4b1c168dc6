package webhooks

// Change-delta records describe what a *.updated event changed. Each changed
// field is an [old_value, new_value] pair; a nil field means it did not
// change. The full updated entity travels separately on the event.

// SubscriptionChanges accompanies subscription.updated events.
type SubscriptionChanges struct {
	PlanID    *Delta[int64]  `json:"plan_id"`
	ExpiresAt *Delta[string] `json:"expires_at"`
	Autorenew *Delta[bool]   `json:"autorenew"`
	Active    *Delta[bool]   `json:"active"`
	Price     *Delta[int]    `json:"price"`

	Extras Extras `json:"-"`
}

func (c *SubscriptionChanges) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("SubscriptionChanges", data)
	if err != nil {
		return err
	}
	if c.PlanID, err = optionalValue[Delta[int64]](d, "plan_id"); err != nil {
		return err
	}
	if c.ExpiresAt, err = optionalValue[Delta[string]](d, "expires_at"); err != nil {
		return err
	}
	if c.Autorenew, err = optionalValue[Delta[bool]](d, "autorenew"); err != nil {
		return err
	}
	if c.Active, err = optionalValue[Delta[bool]](d, "active"); err != nil {
		return err
	}
	if c.Price, err = optionalValue[Delta[int]](d, "price"); err != nil {
		return err
	}
	c.Extras = d.extras()
	return nil
}

// MemberChanges accompanies member_updated events.
type MemberChanges struct {
	Email              *Delta[string] `json:"email"`
	FirstName          *Delta[string] `json:"first_name"`
	LastName           *Delta[string] `json:"last_name"`
	FullName           *Delta[string] `json:"full_name"`
	Username           *Delta[string] `json:"username"`
	PhoneNumber        *Delta[string] `json:"phone_number"`
	DiscordUserID      *Delta[string] `json:"discord_user_id"`
	StripeCustomerID   *Delta[string] `json:"stripe_customer_id"`
	UnrestrictedAccess *Delta[bool]   `json:"unrestricted_access"`
	CustomField        *Delta[any]    `json:"custom_field"`

	Extras Extras `json:"-"`
}

func (c *MemberChanges) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("MemberChanges", data)
	if err != nil {
		return err
	}
	if c.Email, err = optionalValue[Delta[string]](d, "email"); err != nil {
		return err
	}
	if c.FirstName, err = optionalValue[Delta[string]](d, "first_name"); err != nil {
		return err
	}
	if c.LastName, err = optionalValue[Delta[string]](d, "last_name"); err != nil {
		return err
	}
	if c.FullName, err = optionalValue[Delta[string]](d, "full_name"); err != nil {
		return err
	}
	if c.Username, err = optionalValue[Delta[string]](d, "username"); err != nil {
		return err
	}
	if c.PhoneNumber, err = optionalValue[Delta[string]](d, "phone_number"); err != nil {
		return err
	}
	if c.DiscordUserID, err = optionalValue[Delta[string]](d, "discord_user_id"); err != nil {
		return err
	}
	if c.StripeCustomerID, err = optionalValue[Delta[string]](d, "stripe_customer_id"); err != nil {
		return err
	}
	if c.UnrestrictedAccess, err = optionalValue[Delta[bool]](d, "unrestricted_access"); err != nil {
		return err
	}
	if c.CustomField, err = optionalValue[Delta[any]](d, "custom_field"); err != nil {
		return err
	}
	c.Extras = d.extras()
	return nil
}
