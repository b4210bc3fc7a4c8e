/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "pdga-ratingest/0.3.0 (+https://github.com/mikeb26/pdga-ratingest)"
	PdgaBaseURL    = "https://www.pdga.com"
	WebCacheBucket = "bopmatic-pdga-ratingest-prod-webcache"
)
