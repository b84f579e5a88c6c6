// Package texts resolves string identifiers into renderable text.
//
// A paywall element references its copy by StringID: either a literal text
// key, or a structured reference to "the text for product X under payment
// mode Y". Resolution runs on every render pass against the current texts,
// products and state maps and is pure given those inputs.
//
// # Fallback Cascade
//
// Product references walk a fixed key cascade until a text item exists:
//
//	PRODUCT_<id>_<mode>_<suffix>
//	PRODUCT_<id>_default_<suffix>
//	PRODUCT_<mode>_<suffix>
//	PRODUCT_default_<suffix>
//
// and PRODUCT_not_selected_<suffix> when the group has no selection.
//
// # Rich Text and Tags
//
// A text item may be a rich template of literal runs, inline images and
// tags. Tags resolve in priority order: product tags (TITLE, PRICE,
// PRICE_PER_*, OFFER_*), timer segment tags (TIMER_*), then host-supplied
// custom tags. Resolution outcomes are explicit: a Result is tagged Empty,
// ProductMissing or CustomTagMissing rather than relying on sentinel
// identity, and composition logic branches on the tag. A missing product
// aborts the whole rich text; a missing custom tag triggers the item's
// fallback template when one exists.
//
// Resolution misses never return errors. The only throw site is decoding a
// structured string id with an unknown type discriminator.
package texts
