/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package web

const (
	apiBase         = "/api/v1"
	routeEstimate   = apiBase + "/players/:pdga/estimate"
	routeHistory    = apiBase + "/players/:pdga/history"
	routeCalendar   = apiBase + "/calendar"
	pdgaParam       = "pdga"
	dateQueryLayout = "2006-01-02"
)
