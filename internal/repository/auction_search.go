package repository

import "github.com/google/uuid"

// SortOrder enumerates the closed set of auction sort keys. Building the sort
// from an enumeration rather than caller-supplied SQL keeps injection out of
// the search path.
type SortOrder string

const (
	SortAlphabeticalAsc  SortOrder = "ALPHABETICAL_ASC"
	SortAlphabeticalDesc SortOrder = "ALPHABETICAL_DESC"
	SortBidsAsc          SortOrder = "BIDS_ASC"
	SortBidsDesc         SortOrder = "BIDS_DESC"
	SortReserveAsc       SortOrder = "RESERVE_ASC"
	SortReserveDesc      SortOrder = "RESERVE_DESC"
	SortClosingSoon      SortOrder = "CLOSING_SOON"
	SortClosingLast      SortOrder = "CLOSING_LAST"
)

// ParseSortOrder maps a request value onto the sort enumeration. The empty
// string selects the default, closing soonest first.
func ParseSortOrder(s string) (SortOrder, bool) {
	if s == "" {
		return SortClosingSoon, true
	}
	switch SortOrder(s) {
	case SortAlphabeticalAsc, SortAlphabeticalDesc,
		SortBidsAsc, SortBidsDesc,
		SortReserveAsc, SortReserveDesc,
		SortClosingSoon, SortClosingLast:
		return SortOrder(s), true
	}
	return "", false
}

// orderClause returns the SQL order expression for the sort key. Auction id is
// appended as a stable tiebreaker.
func (s SortOrder) orderClause() string {
	var expr string
	switch s {
	case SortAlphabeticalAsc:
		expr = "auctions.title asc"
	case SortAlphabeticalDesc:
		expr = "auctions.title desc"
	case SortBidsAsc:
		expr = "highest_bid asc"
	case SortBidsDesc:
		expr = "highest_bid desc"
	case SortReserveAsc:
		expr = "auctions.reserve asc"
	case SortReserveDesc:
		expr = "auctions.reserve desc"
	case SortClosingLast:
		expr = "auctions.end_date desc"
	default: // SortClosingSoon
		expr = "auctions.end_date asc"
	}
	return expr + ", auctions.id"
}

// AuctionQuery is the closed filter set for auction search. All present
// predicates combine conjunctively; pagination applies after filter and sort.
type AuctionQuery struct {
	SellerID    *uuid.UUID
	CategoryIDs []uuid.UUID
	BidderID    *uuid.UUID
	Search      string
	Sort        SortOrder
	Count       *int
	StartIndex  *int
}
