// Package parcel implements the Parcel aggregate and its delivery lifecycle.
//
// Key business rules:
//   - a parcel is submitted as created/unpaid without a tracking id
//   - payment reconciliation assigns the tracking id once and moves created -> pending-pickup
//   - rider assignment moves pending-pickup -> delivery-assigned
//   - completion by the assigned rider moves delivery-assigned -> delivered
//   - the administrative override may write any status and is audited by its caller
package parcel
