// Package homeaudit checks a home directory against an allow-list
// policy and reports entries the policy does not permit.
package homeaudit
