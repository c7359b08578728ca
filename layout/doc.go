// Package layout groups positioned words into visual text rows.
//
// Row grouping is the first pipeline stage after word extraction: words
// are clustered by proximity of vertical position, one cluster per
// visual line per page. The later scanning stages (course detection,
// name/university extraction) operate exclusively on rows.
package layout
