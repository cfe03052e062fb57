package handler

import (
    "time"

    "github.com/iliyamo/concert-ticketing/internal/checkout"
    "github.com/iliyamo/concert-ticketing/internal/selection"
    "github.com/iliyamo/concert-ticketing/internal/session"
)

// PaymentInfo describes the simulated QRIS payment step.
type PaymentInfo struct {
    Method       string   `json:"method"`
    QRImage      string   `json:"qr_image"`
    AppURL       string   `json:"app_url"`
    Instructions []string `json:"instructions"`
}

// DefaultPaymentInfo returns the QRIS Dana instructions for the given app
// URL and QR image.
func DefaultPaymentInfo(appURL, qrImage string) PaymentInfo {
    return PaymentInfo{
        Method:  "QRIS Dana",
        QRImage: qrImage,
        AppURL:  appURL,
        Instructions: []string{
            "Buka aplikasi Dana di smartphone Anda",
            `Pilih menu "Scan" atau "Bayar"`,
            "Scan QR Code di atas",
            "Konfirmasi pembayaran di aplikasi Dana",
            `Klik tombol "Konfirmasi Pembayaran" di bawah`,
        },
    }
}

// StorefrontHandler groups the dependencies of the selection and checkout
// endpoints.  Selections and checkouts live in memory; each request works
// on one instance under that instance's lock.
type StorefrontHandler struct {
    Catalog     ConcertSource                             // concert lookup
    Selections  *session.Store[*selection.Selection]      // open ticket selections
    Checkouts   *session.Store[*checkout.Machine]         // open checkouts
    Ledger      session.Ledger                            // consumed order tokens
    Publisher   OrderPublisher                            // optional order.completed publisher
    TokenSecret string                                    // order token signing secret
    TokenTTL    time.Duration                             // order token lifetime
    Payment     PaymentInfo                               // payment step details
    Clock       func() time.Time                          // order number clock, time.Now when nil
}

// NewStorefrontHandler constructs a StorefrontHandler.  Catalog, stores,
// ledger and secret are required; publisher may be nil.
func NewStorefrontHandler(
    catalog ConcertSource,
    selections *session.Store[*selection.Selection],
    checkouts *session.Store[*checkout.Machine],
    ledger session.Ledger,
    publisher OrderPublisher,
    secret string,
    tokenTTL time.Duration,
    payment PaymentInfo,
) *StorefrontHandler {
    if catalog == nil || selections == nil || checkouts == nil || ledger == nil || secret == "" {
        panic("missing dependency passed to NewStorefrontHandler")
    }
    return &StorefrontHandler{
        Catalog:     catalog,
        Selections:  selections,
        Checkouts:   checkouts,
        Ledger:      ledger,
        Publisher:   publisher,
        TokenSecret: secret,
        TokenTTL:    tokenTTL,
        Payment:     payment,
    }
}
