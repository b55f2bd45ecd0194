// Package docfill fills placeholders in Word (DOCX) documents.
//
// Two placeholder grammars are recognised inside paragraph text:
//
//	{{label}}                  required, no default
//	{{group@sub@label}}        required, grouped
//	[[label]]                  the label doubles as the default value
//	[[|group@label|default]]   grouped, with an explicit default
//
// Basic Usage:
//
//	tmpl, err := docfill.PrepareFile("cover-letter.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tmpl.Close()
//
//	snap, _ := docfill.LoadSnapshot("_ph_cover-letter.json")
//	tmpl.FillFrom(snap)
//
//	values := tmpl.Placeholders()
//	values["{{company}}"] = "Acme"
//	tmpl.Apply(values)
//
//	if err := tmpl.SaveFile("Acme - cover letter.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// Word splits visible text over runs at arbitrary points, so a token may span
// several w:r elements. Replacement works on the concatenated text of a
// paragraph's runs and writes the result back into the runs it came from,
// keeping the formatting of the first run of each token.
//
// Hyperlinks are rewritten separately with RewriteHyperlinks, which changes the
// relationship target and display text of links matching both exactly.
package docfill
