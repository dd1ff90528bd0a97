package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrNoBids          = errors.New("no bids found for auction")
)

// Mirror feed errors
var (
	ErrProviderNotSupported = errors.New("mirror provider not supported")
)

// Bid validation outcomes recorded on rejected transfers
var (
	ErrBidBelowMinimum = errors.New("bid below minimum bid")
	ErrBidBelowWinning = errors.New("bid does not exceed current winning bid")
	ErrWinnerCannotBid = errors.New("current winner may not bid again")
)
