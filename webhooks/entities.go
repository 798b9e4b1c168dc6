package webhooks

// Entities mirror the platform's nested JSON shapes. Each decodes from a
// single JSON object, validates required fields, applies documented defaults
// for absent optional fields, and preserves undeclared fields in Extras.

// Address is a member's postal address. Every field is optional.
type Address struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`

	Extras Extras `json:"-"`
}

func (a *Address) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("Address", data)
	if err != nil {
		return err
	}
	if a.Street, err = d.optionalString("street"); err != nil {
		return err
	}
	if a.City, err = d.optionalString("city"); err != nil {
		return err
	}
	if a.State, err = d.optionalString("state"); err != nil {
		return err
	}
	if a.PostalCode, err = d.optionalString("postal_code"); err != nil {
		return err
	}
	if a.Country, err = d.optionalString("country"); err != nil {
		return err
	}
	a.Extras = d.extras()
	return nil
}

// CreditCard is the card on file for a member.
type CreditCard struct {
	ExpMonth *int    `json:"exp_month"`
	ExpYear  *int    `json:"exp_year"`
	LastFour *string `json:"last_four"`
	Brand    *string `json:"brand"`

	Extras Extras `json:"-"`
}

func (c *CreditCard) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("CreditCard", data)
	if err != nil {
		return err
	}
	if c.ExpMonth, err = d.optionalInt("exp_month"); err != nil {
		return err
	}
	if c.ExpYear, err = d.optionalInt("exp_year"); err != nil {
		return err
	}
	if c.LastFour, err = d.optionalString("last_four"); err != nil {
		return err
	}
	if c.Brand, err = d.optionalString("brand"); err != nil {
		return err
	}
	c.Extras = d.extras()
	return nil
}

// TrackingParams are the UTM parameters captured at signup.
type TrackingParams struct {
	UTMTerm     *string `json:"utm_term"`
	UTMCampaign *string `json:"utm_campaign"`
	UTMMedium   *string `json:"utm_medium"`
	UTMSource   *string `json:"utm_source"`
	UTMContent  *string `json:"utm_content"`

	Extras Extras `json:"-"`
}

func (t *TrackingParams) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("TrackingParams", data)
	if err != nil {
		return err
	}
	if t.UTMTerm, err = d.optionalString("utm_term"); err != nil {
		return err
	}
	if t.UTMCampaign, err = d.optionalString("utm_campaign"); err != nil {
		return err
	}
	if t.UTMMedium, err = d.optionalString("utm_medium"); err != nil {
		return err
	}
	if t.UTMSource, err = d.optionalString("utm_source"); err != nil {
		return err
	}
	if t.UTMContent, err = d.optionalString("utm_content"); err != nil {
		return err
	}
	t.Extras = d.extras()
	return nil
}

// SubscriptionPlan describes a plan. Price and renewal fields are optional
// because some webhook contexts (order completion, notably) carry minimal
// plan stubs. PriceCents is a platform-inconsistency alias for Price seen in
// some payloads; the two are never conflated.
type SubscriptionPlan struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Price         *int           `json:"price"`
	PriceCents    *int           `json:"price_cents"`
	RenewalPeriod *RenewalPeriod `json:"renewal_period"`
	IntervalUnit  *IntervalUnit  `json:"interval_unit"`
	IntervalCount int            `json:"interval_count"`
	ForSale       bool           `json:"for_sale"`
	Type          *string        `json:"type"`

	Extras Extras `json:"-"`
}

func (p *SubscriptionPlan) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("SubscriptionPlan", data)
	if err != nil {
		return err
	}
	if p.ID, err = d.requiredInt64("id"); err != nil {
		return err
	}
	if p.Name, err = d.requiredString("name"); err != nil {
		return err
	}
	if p.Slug, err = d.requiredString("slug"); err != nil {
		return err
	}
	if p.Price, err = d.optionalInt("price"); err != nil {
		return err
	}
	if p.PriceCents, err = d.optionalInt("price_cents"); err != nil {
		return err
	}
	if p.RenewalPeriod, err = optionalValue[RenewalPeriod](d, "renewal_period"); err != nil {
		return err
	}
	if p.IntervalUnit, err = optionalValue[IntervalUnit](d, "interval_unit"); err != nil {
		return err
	}
	if p.IntervalCount, err = d.intOr("interval_count", 1); err != nil {
		return err
	}
	if p.ForSale, err = d.boolOr("for_sale", true); err != nil {
		return err
	}
	if p.Type, err = d.optionalString("type"); err != nil {
		return err
	}
	p.Extras = d.extras()
	return nil
}

// Product is a download/product record.
type Product struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Price   int    `json:"price"`
	Slug    string `json:"slug"`
	ForSale bool   `json:"for_sale"`

	Extras Extras `json:"-"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("Product", data)
	if err != nil {
		return err
	}
	if p.ID, err = d.requiredInt64("id"); err != nil {
		return err
	}
	if p.Name, err = d.requiredString("name"); err != nil {
		return err
	}
	if p.Price, err = d.requiredInt("price"); err != nil {
		return err
	}
	if p.Slug, err = d.requiredString("slug"); err != nil {
		return err
	}
	if p.ForSale, err = d.boolOr("for_sale", true); err != nil {
		return err
	}
	p.Extras = d.extras()
	return nil
}

// Member is a full member record. ID and Email are always present in full
// records; member.deleted events carry DeletedMember instead.
type Member struct {
	ID                 int64           `json:"id"`
	Email              string          `json:"email"`
	FirstName          *string         `json:"first_name"`
	LastName           *string         `json:"last_name"`
	FullName           *string         `json:"full_name"`
	Username           *string         `json:"username"`
	PhoneNumber        *string         `json:"phone_number"`
	CreatedAt          int64           `json:"created_at"`
	SignupMethod       *SignupMethod   `json:"signup_method"`
	StripeCustomerID   *string         `json:"stripe_customer_id"`
	DiscordUserID      *string         `json:"discord_user_id"`
	UnrestrictedAccess bool            `json:"unrestricted_access"`
	Address            *Address        `json:"address"`
	CreditCard         *CreditCard     `json:"credit_card"`
	TrackingParams     *TrackingParams `json:"tracking_params"`
	CustomField        any             `json:"custom_field"`

	Extras Extras `json:"-"`
}

func (m *Member) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("Member", data)
	if err != nil {
		return err
	}
	if m.ID, err = d.requiredInt64("id"); err != nil {
		return err
	}
	if m.Email, err = d.requiredString("email"); err != nil {
		return err
	}
	if m.FirstName, err = d.optionalString("first_name"); err != nil {
		return err
	}
	if m.LastName, err = d.optionalString("last_name"); err != nil {
		return err
	}
	if m.FullName, err = d.optionalString("full_name"); err != nil {
		return err
	}
	if m.Username, err = d.optionalString("username"); err != nil {
		return err
	}
	if m.PhoneNumber, err = d.optionalString("phone_number"); err != nil {
		return err
	}
	if m.CreatedAt, err = d.requiredInt64("created_at"); err != nil {
		return err
	}
	if m.SignupMethod, err = optionalValue[SignupMethod](d, "signup_method"); err != nil {
		return err
	}
	if m.StripeCustomerID, err = d.optionalString("stripe_customer_id"); err != nil {
		return err
	}
	if m.DiscordUserID, err = d.optionalString("discord_user_id"); err != nil {
		return err
	}
	if m.UnrestrictedAccess, err = d.boolOr("unrestricted_access", false); err != nil {
		return err
	}
	if m.Address, err = optionalValue[Address](d, "address"); err != nil {
		return err
	}
	if m.CreditCard, err = optionalValue[CreditCard](d, "credit_card"); err != nil {
		return err
	}
	if m.TrackingParams, err = optionalValue[TrackingParams](d, "tracking_params"); err != nil {
		return err
	}
	if m.CustomField, err = d.anyField("custom_field"); err != nil {
		return err
	}
	m.Extras = d.extras()
	return nil
}

// DeletedMember is the minimal shape carried by member.deleted events; the
// platform no longer has the full member data at that point.
type DeletedMember struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`

	Extras Extras `json:"-"`
}

func (m *DeletedMember) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("DeletedMember", data)
	if err != nil {
		return err
	}
	if m.ID, err = d.requiredInt64("id"); err != nil {
		return err
	}
	if m.Deleted, err = d.boolOr("deleted", true); err != nil {
		return err
	}
	m.Extras = d.extras()
	return nil
}

// MemberSubscription is the member-embedded subscription shape used inside
// Member and Order contexts. Its plan sits under the "subscription" key and
// its timestamps are unix integers. The standalone shape used by
// subscription-lifecycle events is Subscription.
type MemberSubscription struct {
	ID            int64            `json:"id"`
	Active        bool             `json:"active"`
	CreatedAt     int64            `json:"created_at"`
	Expires       bool             `json:"expires"`
	ExpiresAt     *int64           `json:"expires_at"`
	InTrialPeriod bool             `json:"in_trial_period"`
	Plan          SubscriptionPlan `json:"subscription"`
	TrialStartAt  *int64           `json:"trial_start_at"`
	TrialEndAt    *int64           `json:"trial_end_at"`

	Extras Extras `json:"-"`
}

func (s *MemberSubscription) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("MemberSubscription", data)
	if err != nil {
		return err
	}
	if s.ID, err = d.requiredInt64("id"); err != nil {
		return err
	}
	if s.Active, err = d.requiredBool("active"); err != nil {
		return err
	}
	if s.CreatedAt, err = d.requiredInt64("created_at"); err != nil {
		return err
	}
	if s.Expires, err = d.requiredBool("expires"); err != nil {
		return err
	}
	if s.ExpiresAt, err = d.optionalInt64("expires_at"); err != nil {
		return err
	}
	if s.InTrialPeriod, err = d.boolOr("in_trial_period", false); err != nil {
		return err
	}
	if s.Plan, err = requiredValue[SubscriptionPlan](d, "subscription"); err != nil {
		return err
	}
	if s.TrialStartAt, err = d.optionalInt64("trial_start_at"); err != nil {
		return err
	}
	if s.TrialEndAt, err = d.optionalInt64("trial_end_at"); err != nil {
		return err
	}
	s.Extras = d.extras()
	return nil
}

// Subscription is the standalone shape carried by subscription-lifecycle
// events: the plan sits under "subscription_plan", timestamps are ISO
// strings, and the owning member is embedded.
type Subscription struct {
	ID           int64            `json:"id"`
	Active       bool             `json:"active"`
	Autorenew    bool             `json:"autorenew"`
	CreatedAt    string           `json:"created_at"`
	ExpiresAt    string           `json:"expires_at"`
	Member       Member           `json:"member"`
	Plan         SubscriptionPlan `json:"subscription_plan"`
	TrialStartAt *string          `json:"trial_start_at"`
	TrialEndAt   *string          `json:"trial_end_at"`

	Extras Extras `json:"-"`
}

func (s *Subscription) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("Subscription", data)
	if err != nil {
		return err
	}
	if s.ID, err = d.requiredInt64("id"); err != nil {
		return err
	}
	if s.Active, err = d.requiredBool("active"); err != nil {
		return err
	}
	if s.Autorenew, err = d.requiredBool("autorenew"); err != nil {
		return err
	}
	if s.CreatedAt, err = d.requiredString("created_at"); err != nil {
		return err
	}
	if s.ExpiresAt, err = d.requiredString("expires_at"); err != nil {
		return err
	}
	if s.Member, err = requiredValue[Member](d, "member"); err != nil {
		return err
	}
	if s.Plan, err = requiredValue[SubscriptionPlan](d, "subscription_plan"); err != nil {
		return err
	}
	if s.TrialStartAt, err = d.optionalString("trial_start_at"); err != nil {
		return err
	}
	if s.TrialEndAt, err = d.optionalString("trial_end_at"); err != nil {
		return err
	}
	s.Extras = d.extras()
	return nil
}

// Order is a purchase record. The member is absent in some
// subscription-lifecycle contexts, and created_at arrives as either a unix
// integer or an ISO string.
type Order struct {
	UUID          string               `json:"uuid"`
	Number        *string              `json:"number"`
	Total         int                  `json:"total"`
	Status        OrderStatus          `json:"status"`
	Receipt       *string              `json:"receipt"`
	CreatedAt     *Timestamp           `json:"created_at"`
	Member        *Member              `json:"member"`
	Products      []Product            `json:"products"`
	Subscriptions []MemberSubscription `json:"subscriptions"`

	Extras Extras `json:"-"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("Order", data)
	if err != nil {
		return err
	}
	if o.UUID, err = d.requiredString("uuid"); err != nil {
		return err
	}
	if o.Number, err = d.optionalString("number"); err != nil {
		return err
	}
	if o.Total, err = d.requiredInt("total"); err != nil {
		return err
	}
	if o.Status, err = requiredValue[OrderStatus](d, "status"); err != nil {
		return err
	}
	if o.Receipt, err = d.optionalString("receipt"); err != nil {
		return err
	}
	if o.CreatedAt, err = optionalValue[Timestamp](d, "created_at"); err != nil {
		return err
	}
	if o.Member, err = optionalValue[Member](d, "member"); err != nil {
		return err
	}
	if o.Products, err = sliceValue[Product](d, "products"); err != nil {
		return err
	}
	if o.Subscriptions, err = sliceValue[MemberSubscription](d, "subscriptions"); err != nil {
		return err
	}
	o.Extras = d.extras()
	return nil
}
