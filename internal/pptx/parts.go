// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import "text/template"

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	nsDecl    = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	relNS     = `http://schemas.openxmlformats.org/officeDocument/2006/relationships`
	emptyTree = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`
)

func parse(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(xmlHeader + text))
}

var contentTypesTmpl = parse("content-types", `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`+
	`<Default Extension="xml" ContentType="application/xml"/>`+
	`<Default Extension="png" ContentType="image/png"/>`+
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`+
	`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`+
	`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`+
	`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`+
	`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`+
	`{{range .Slides}}<Override PartName="/ppt/slides/slide{{.N}}.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>{{end}}`+
	`</Types>`)

var rootRelsTmpl = parse("root-rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relNS+`/officeDocument" Target="ppt/presentation.xml"/>`+
	`<Relationship Id="rId2" Type="`+relNS+`/extended-properties" Target="docProps/app.xml"/>`+
	`</Relationships>`)

var appTmpl = parse("app", `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`+
	`<Application>docconv</Application><Slides>{{len .Slides}}</Slides>`+
	`</Properties>`)

var presentationTmpl = parse("presentation", `<p:presentation `+nsDecl+` saveSubsetFonts="1">`+
	`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`+
	`{{if .Slides}}<p:sldIdLst>{{range .Slides}}<p:sldId id="{{.ID}}" r:id="rId{{.RelID}}"/>{{end}}</p:sldIdLst>{{end}}`+
	`<p:sldSz cx="{{.Width}}" cy="{{.Height}}"/>`+
	`<p:notesSz cx="{{.Height}}" cy="{{.Width}}"/>`+
	`</p:presentation>`)

var presentationRelsTmpl = parse("presentation-rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relNS+`/slideMaster" Target="slideMasters/slideMaster1.xml"/>`+
	`<Relationship Id="rId2" Type="`+relNS+`/theme" Target="theme/theme1.xml"/>`+
	`{{range .Slides}}<Relationship Id="rId{{.RelID}}" Type="`+relNS+`/slide" Target="slides/slide{{.N}}.xml"/>{{end}}`+
	`</Relationships>`)

var masterTmpl = parse("master", `<p:sldMaster `+nsDecl+`>`+
	`<p:cSld><p:spTree>`+emptyTree+`</p:spTree></p:cSld>`+
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`+
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>`+
	`<p:txStyles><p:titleStyle/><p:bodyStyle/><p:otherStyle/></p:txStyles>`+
	`</p:sldMaster>`)

var masterRelsTmpl = parse("master-rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relNS+`/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`+
	`<Relationship Id="rId2" Type="`+relNS+`/theme" Target="../theme/theme1.xml"/>`+
	`</Relationships>`)

var layoutTmpl = parse("layout", `<p:sldLayout `+nsDecl+` type="blank" preserve="1">`+
	`<p:cSld name="Blank"><p:spTree>`+emptyTree+`</p:spTree></p:cSld>`+
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`+
	`</p:sldLayout>`)

var layoutRelsTmpl = parse("layout-rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relNS+`/slideMaster" Target="../slideMasters/slideMaster1.xml"/>`+
	`</Relationships>`)

var slideTmpl = parse("slide", `<p:sld `+nsDecl+`>`+
	`<p:cSld><p:spTree>`+emptyTree+
	`<p:pic><p:nvPicPr><p:cNvPr id="2" name="Picture 1"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`+
	`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
	`<p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="{{.Width}}" cy="{{.Height}}"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
	`</p:pic></p:spTree></p:cSld>`+
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`+
	`</p:sld>`)

var slideRelsTmpl = parse("slide-rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relNS+`/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`+
	`<Relationship Id="rId2" Type="`+relNS+`/image" Target="../media/image{{.N}}.png"/>`+
	`</Relationships>`)

var themeTmpl = parse("theme", `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office Theme"><a:themeElements>`+
	`<a:clrScheme name="Office">`+
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>`+
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>`+
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2>`+
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4>`+
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6>`+
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>`+
	`</a:clrScheme>`+
	`<a:fontScheme name="Office">`+
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>`+
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>`+
	`</a:fontScheme>`+
	`<a:fmtScheme name="Office">`+
	`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>`+
	`<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>`+
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>`+
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>`+
	`</a:fmtScheme>`+
	`</a:themeElements></a:theme>`)
