// Package catalog holds the category and product maintenance procedures:
// seeding the fixed top-level categories and bulk deleting the products of
// one category.
package catalog
