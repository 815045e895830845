package descriptions

// Tool descriptions with practical examples and use cases

const (
	PDFExtractFieldsDescription = `Extract structured shipping-bill fields from a customs PDF document.

**When to use:** Need the declared fields of a courier shipping bill (CSB-IV/CSB-V) or export declaration as structured JSON instead of raw text.

**Why it's useful:** Resolves fifty-plus fields (invoice number and date, FOB values, consignee details, ports, weights, tax totals) from both the form grids and the running text, normalizes dates and amounts, and infers derived fields like consignee country and mode of transport.

**Examples:**
• Reconcile exports: "Extract fields from shipping-bill-4521.pdf to match against the invoice ledger"
• Feed downstream systems: "Get the FOB value and HAWB number from csb_output.pdf"

**Best practices:** Validate the file first with pdf_validate_file; absent fields are omitted from the result rather than returned empty.`

	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before attempting to extract fields from any PDF file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors, identifies corrupted files early, and ensures compatibility with the extraction engine.

**Examples:**
• Batch processing safety: "Validate all PDFs in /shipping-bills/ before bulk extraction"
• Upload verification: "Check user-uploaded bill.pdf is valid before processing"

**Best practices:** Always run this first in automated workflows handling unknown PDFs.`
)
