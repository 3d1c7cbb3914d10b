package bgg

const collectionXML = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>
<items totalitems="3" termsofuse="https://boardgamegeek.com/xmlapi/termsofuse" pubdate="Mon, 12 Oct 2026 10:00:00 +0000">
  <item objecttype="thing" objectid="13" subtype="boardgame" collid="1001">
    <name sortindex="1">CATAN</name>
    <yearpublished>1995</yearpublished>
    <status own="1" prevowned="0" fortrade="0" want="0" wanttoplay="1" wanttobuy="0" wishlist="0" preordered="0" lastmodified="2024-01-01 10:00:00"/>
    <numplays>12</numplays>
    <stats minplayers="3" maxplayers="4" minplaytime="60" maxplaytime="120" playingtime="120" numowned="100">
      <rating value="8">
        <usersrated value="1000"/>
        <average value="7.1"/>
        <bayesaverage value="6.9"/>
        <ranks>
          <rank type="subtype" id="1" name="boardgame" friendlyname="Board Game Rank" value="512" bayesaverage="6.9"/>
          <rank type="family" id="5499" name="familygames" friendlyname="Family Game Rank" value="100" bayesaverage="6.9"/>
        </ranks>
      </rating>
    </stats>
    <version>
      <item type="boardgameversion" id="346745">
        <name type="primary" sortindex="1" value="Fifth Edition"/>
        <yearpublished value="2015"/>
        <width value="11.6"/>
        <length value="11.6"/>
        <depth value="2.9"/>
        <weight value="2.6"/>
      </item>
    </version>
  </item>
  <item objecttype="thing" objectid="325" subtype="boardgame" collid="1002">
    <name sortindex="1">Catan: Seafarers</name>
    <yearpublished>1997</yearpublished>
    <status own="1" prevowned="0" fortrade="0" want="0" wanttoplay="0" wanttobuy="0" wishlist="0" preordered="0" lastmodified="2024-01-01 10:00:00"/>
    <numplays>0</numplays>
    <stats minplayers="3" maxplayers="4" minplaytime="60" maxplaytime="90" playingtime="90" numowned="10">
      <rating value="N/A">
        <average value="7.3"/>
        <bayesaverage value="0"/>
        <ranks>
          <rank type="subtype" id="1" name="boardgame" friendlyname="Board Game Rank" value="Not Ranked" bayesaverage="Not Ranked"/>
        </ranks>
      </rating>
    </stats>
    <version>
      <item type="boardgameversion" id="9001">
        <name type="primary" sortindex="1" value="German edition"/>
        <yearpublished value="2010"/>
        <width value="0"/>
        <length value="0"/>
        <depth value="0"/>
        <weight value="0"/>
      </item>
    </version>
  </item>
  <item objecttype="thing" objectid="822" subtype="boardgame" collid="1003">
    <name sortindex="1">Carcassonne</name>
    <yearpublished>2000</yearpublished>
    <status own="0" prevowned="0" fortrade="0" want="0" wanttoplay="0" wanttobuy="0" wishlist="1" preordered="0" lastmodified="2024-01-01 10:00:00"/>
    <numplays>3</numplays>
    <stats minplayers="2" maxplayers="5" minplaytime="30" maxplaytime="45" playingtime="45" numowned="50">
      <rating value="N/A">
        <average value="7.4"/>
        <bayesaverage value="7.3"/>
        <ranks>
          <rank type="subtype" id="1" name="boardgame" friendlyname="Board Game Rank" value="190" bayesaverage="7.3"/>
        </ranks>
      </rating>
    </stats>
  </item>
</items>`

const thingsXML = `<?xml version="1.0" encoding="utf-8"?>
<items termsofuse="https://boardgamegeek.com/xmlapi/termsofuse">
  <item type="boardgame" id="13">
    <name type="primary" sortindex="1" value="CATAN"/>
    <name type="alternate" sortindex="1" value="Die Siedler von Catan"/>
    <yearpublished value="1995"/>
    <minplayers value="3"/>
    <maxplayers value="4"/>
    <minplaytime value="60"/>
    <maxplaytime value="120"/>
    <minage value="10"/>
    <poll name="language_dependence" title="Language Dependence" totalvotes="30">
      <results>
        <result level="1" value="No necessary in-game text" numvotes="20"/>
        <result level="2" value="Some necessary text" numvotes="10"/>
      </results>
    </poll>
    <link type="boardgamecategory" id="1026" value="Negotiation"/>
    <link type="boardgamefamily" id="3" value="Series: Catan"/>
    <link type="boardgamemechanic" id="2072" value="Dice Rolling"/>
    <link type="boardgameexpansion" id="325" value="Catan: Seafarers"/>
    <versions>
      <item type="boardgameversion" id="346745">
        <name type="primary" sortindex="1" value="Fifth Edition"/>
        <link type="language" id="2184" value="English"/>
        <yearpublished value="2015"/>
        <width value="11.6"/>
        <length value="11.6"/>
        <depth value="2.9"/>
      </item>
    </versions>
    <statistics page="1">
      <ratings>
        <average value="7.1"/>
        <bayesaverage value="6.9"/>
        <ranks>
          <rank type="subtype" id="1" name="boardgame" value="512"/>
        </ranks>
        <averageweight value="2.3"/>
      </ratings>
    </statistics>
  </item>
  <item type="boardgameexpansion" id="325">
    <name type="primary" sortindex="1" value="Catan: Seafarers"/>
    <yearpublished value="1997"/>
    <minage value="10"/>
    <link type="boardgamecategory" id="1026" value="Expansion for Base-game"/>
    <link type="boardgamefamily" id="3" value="Series: Catan"/>
    <link type="boardgameexpansion" id="13" value="CATAN" inbound="true"/>
    <versions>
      <item type="boardgameversion" id="9001">
        <name type="primary" value="German edition"/>
        <link type="language" id="2188" value="German"/>
        <yearpublished value="2010"/>
        <width value="0"/>
        <length value="0"/>
        <depth value="0"/>
      </item>
      <item type="boardgameversion" id="9002">
        <name type="primary" value="German edition 2019"/>
        <link type="language" id="2188" value="German"/>
        <yearpublished value="2019"/>
        <width value="11.8"/>
        <length value="11.8"/>
        <depth value="3.0"/>
      </item>
      <item type="boardgameversion" id="9003">
        <name type="primary" value="English edition"/>
        <link type="language" id="2184" value="English"/>
        <yearpublished value="2015"/>
        <width value="11.7"/>
        <length value="11.7"/>
        <depth value="2.8"/>
      </item>
    </versions>
    <statistics page="1">
      <ratings>
        <average value="7.3"/>
        <bayesaverage value="0"/>
        <averageweight value="2.4"/>
      </ratings>
    </statistics>
  </item>
  <item type="boardgame" id="822">
    <name type="primary" sortindex="1" value="Carcassonne"/>
    <yearpublished value="2000"/>
    <minage value="7"/>
    <link type="boardgamemechanic" id="2002" value="Tile Placement"/>
    <versions>
      <item type="boardgameversion" id="1"><name type="primary" value="Old"/><yearpublished value="2000"/>
        <width value="10"/><length value="10"/><depth value="3"/></item>
      <item type="boardgameversion" id="2"><name type="primary" value="New"/><yearpublished value="2021"/>
        <width value="11"/><length value="11"/><depth value="3"/></item>
    </versions>
    <statistics page="1"><ratings><averageweight value="1.9"/></ratings></statistics>
  </item>
</items>`

const unknownUserXML = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>
<errors><error><message>Invalid username specified</message></error></errors>`
