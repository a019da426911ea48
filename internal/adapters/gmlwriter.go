package adapters

import (
	"fmt"
	"strings"
	"time"

	"github.com/rawblock/cadastral-engine/internal/catalog"
	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/pkg/models"
)

// GMLWriter renders an operation list as wfs:Insert/Delete/Replace GML
// fragments, grounded on original_source/src/david.rs's
// aenderungen_zu_fa_xml, get_insert_xml_node and get_replace_xml_node.
// The templating is deliberately mechanical string substitution, the
// same style the source itself uses (const XML template +
// str::replace), rather than a full GML object model — spec.md scopes
// wire formatting as mechanical.
type GMLWriter struct {
	Now func() time.Time
}

// NewGMLWriter returns a GMLWriter using the real wall clock for
// datumDerLetztenUeberpruefung timestamps.
func NewGMLWriter() *GMLWriter {
	return &GMLWriter{Now: time.Now}
}

// WriteOperations renders ops as a sequence of wfs-transaction
// fragments, looking up each op's display attributes in cat.
func (w *GMLWriter) WriteOperations(ops []models.Operation, members map[string]catalog.MemberObject, cat *catalog.Catalog) string {
	var b strings.Builder
	now := w.Now
	if now == nil {
		now = time.Now
	}
	ts := now().UTC().Format("2006-01-02T15:04:05Z")

	for _, op := range ops {
		switch op.Kind {
		case models.OpInsert:
			b.WriteString(w.insertNode(op, ts, cat))
		case models.OpReplace:
			b.WriteString(w.replaceNode(op, members[op.ObjID]))
		case models.OpDelete:
			b.WriteString(deleteNode(op))
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

func (w *GMLWriter) insertNode(op models.Operation, ts string, cat *catalog.Catalog) string {
	ebene := op.Layer
	if ebene == "" && cat != nil {
		ebene = cat.LayerOf(op.Key)
	}
	return fmt.Sprintf(`<wfs:Insert>
    <%s gml:id="%s">
        <gml:identifier codeSpace="http://www.adv-online.de/">urn:adv:oid:%s</gml:identifier>
        <lebenszeitintervall><AA_Lebenszeitintervall><beginnt>%s</beginnt></AA_Lebenszeitintervall></lebenszeitintervall>
        %s
        <datumDerLetztenUeberpruefung>%s</datumDerLetztenUeberpruefung>
    </%s>
</wfs:Insert>`, ebene, op.ObjID, op.ObjID, ts, positionNode(op.PolyNeu), ts, ebene)
}

func (w *GMLWriter) replaceNode(op models.Operation, member catalog.MemberObject) string {
	ebene := op.Layer
	beginnt := member.Beginnt
	if beginnt == "" {
		beginnt = "9999-01-01T00:00:00Z"
	}
	var extra strings.Builder
	for k, v := range member.ExtraAttribute {
		if k == "datumDerLetztenUeberpruefung" || k == "ergebnisDerUeberpruefung" || k == "identifier" {
			continue
		}
		fmt.Fprintf(&extra, "        <%s>%s</%s>\r\n", k, xmlEscape(v), k)
	}
	return fmt.Sprintf(`<wfs:Replace>
    <%s gml:id="%s">
        <gml:identifier codeSpace="http://www.adv-online.de/">urn:adv:oid:%s</gml:identifier>
        <lebenszeitintervall><AA_Lebenszeitintervall><beginnt>%s</beginnt></AA_Lebenszeitintervall></lebenszeitintervall>
        %s
%s    </%s>
    <fes:Filter><fes:ResourceId rid="%s"/></fes:Filter>
</wfs:Replace>`, ebene, op.ObjID, op.ObjID, beginnt, positionNode(op.PolyNeu), extra.String(), ebene, op.ObjID)
}

func deleteNode(op models.Operation) string {
	return fmt.Sprintf(`<wfs:Delete typeName="%s"><fes:Filter><fes:ResourceId rid="%s"/></fes:Filter></wfs:Delete>`, op.Layer, op.ObjID)
}

func positionNode(poly geometry.Polygon) string {
	var rings strings.Builder
	for _, r := range poly.OuterRings {
		fmt.Fprintf(&rings, "<gml:exterior>%s</gml:exterior>", ringToGML(r))
	}
	for _, r := range poly.InnerRings {
		fmt.Fprintf(&rings, "<gml:interior>%s</gml:interior>", ringToGML(r))
	}
	return fmt.Sprintf(`<position><gml:Polygon>%s</gml:Polygon></position>`, rings.String())
}

func ringToGML(r geometry.Line) string {
	var coords strings.Builder
	for i, p := range r.Points {
		if i > 0 {
			coords.WriteString(" ")
		}
		fmt.Fprintf(&coords, "%.3f,%.3f", p.X, p.Y)
	}
	return fmt.Sprintf(`<gml:LinearRing><gml:posList>%s</gml:posList></gml:LinearRing>`, coords.String())
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
