package buyer

import (
	"errors"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
)

// Domain errors for buyer info operations.
var (
	// ErrBuyerInfoIsNotConstructed is returned when using an improperly initialized BuyerInfo.
	ErrBuyerInfoIsNotConstructed = errors.New("BuyerInfo must be created via NewBuyerInfo constructor")
)

// BuyerInfo holds the shipping and customs data for one order. It is a
// one-to-one companion of the Order aggregate, keyed by the order id, and
// must exist and be complete before the order can leave BUYER_INFO_SET.
//
// Business rules:
//   - Name, phone, primary address, zip and country are required
//   - The secondary address line and the customs id are optional; some
//     destination countries do not require a personal customs code
type BuyerInfo struct {
	// orderID ties the buyer info to its order
	orderID kernel.UUID

	// name is the recipient's full name
	name string

	// phone is the recipient's contact number, used by the forwarder
	phone string

	// address1 is the primary address line
	address1 string

	// address2 is the optional secondary address line
	address2 string

	// zip is the postal code
	zip string

	// country is the destination country code
	country string

	// customsID is the optional personal customs code required by some
	// destination countries
	customsID string

	// isConstructed ensures the buyer info was created via NewBuyerInfo
	isConstructed bool
}

// NewBuyerInfo creates a validated BuyerInfo for the given order.
// Required-field violations are joined so the caller sees every missing
// field at once.
func NewBuyerInfo(
	orderID kernel.UUID,
	name string,
	phone string,
	address1 string,
	address2 string,
	zip string,
	country string,
	customsID string,
) (*BuyerInfo, error) {
	bi := &BuyerInfo{
		address2:      address2,
		customsID:     customsID,
		isConstructed: true,
	}

	if err := errors.Join(
		bi.setOrderID(orderID),
		bi.setName(name),
		bi.setPhone(phone),
		bi.setAddress1(address1),
		bi.setZip(zip),
		bi.setCountry(country),
	); err != nil {
		return nil, err
	}

	return bi, nil
}

// Validate ensures the BuyerInfo instance was properly constructed.
func (b *BuyerInfo) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBuyerInfoIsNotConstructed
	}
	return nil
}

// OrderID returns the identifier of the order this buyer info belongs to.
func (b *BuyerInfo) OrderID() kernel.UUID {
	return b.orderID
}

// Name returns the recipient's full name.
func (b *BuyerInfo) Name() string {
	return b.name
}

// Phone returns the recipient's contact number.
func (b *BuyerInfo) Phone() string {
	return b.phone
}

// Address1 returns the primary address line.
func (b *BuyerInfo) Address1() string {
	return b.address1
}

// Address2 returns the optional secondary address line.
func (b *BuyerInfo) Address2() string {
	return b.address2
}

// Zip returns the postal code.
func (b *BuyerInfo) Zip() string {
	return b.zip
}

// Country returns the destination country code.
func (b *BuyerInfo) Country() string {
	return b.country
}

// CustomsID returns the optional personal customs code.
func (b *BuyerInfo) CustomsID() string {
	return b.customsID
}

// IsComplete reports whether every field required for forwarder submission
// is present. A constructed BuyerInfo is always complete; the method exists
// so callers holding restored data can re-check the invariant explicitly.
func (b *BuyerInfo) IsComplete() bool {
	return b.Validate() == nil &&
		b.name != "" && b.phone != "" && b.address1 != "" &&
		b.zip != "" && b.country != ""
}

func (b *BuyerInfo) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	b.orderID = orderID
	return nil
}

func (b *BuyerInfo) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	b.name = name
	return nil
}

func (b *BuyerInfo) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	b.phone = phone
	return nil
}

func (b *BuyerInfo) setAddress1(address1 string) error {
	if address1 == "" {
		return errs.NewValueIsRequiredError("address1")
	}
	b.address1 = address1
	return nil
}

func (b *BuyerInfo) setZip(zip string) error {
	if zip == "" {
		return errs.NewValueIsRequiredError("zip")
	}
	b.zip = zip
	return nil
}

func (b *BuyerInfo) setCountry(country string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	b.country = country
	return nil
}
